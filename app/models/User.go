package models

// User is a chat-platform account known to this process. It backs both the
// auth surface and the member directory.
type User struct {
	tableName struct{} `pg:"users,alias:users"`

	Id       string `pg:"id,pk"`
	Username string `pg:"username"`
	Password string `pg:"password"`
}

type UserDto struct {
	Username string `json:"username"`
	Pass     string `json:"pass"`
}

// Member is the external display identity of a user, as the chat layer
// would render it.
type Member struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}
