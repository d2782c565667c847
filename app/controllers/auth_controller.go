package controllers

import (
	jwt "github.com/form3tech-oss/jwt-go"
	"github.com/go-pg/pg/v10"
	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/boardgamehq/monopoly-engine/app/models"
)

type AuthController struct {
	DB     *pg.DB
	Secret []byte
}

func (ac *AuthController) CreateUser(c *fiber.Ctx) error {
	dto := new(models.UserDto)
	if err := c.BodyParser(dto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Pass), bcrypt.DefaultCost)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	user := &models.User{
		Id:       uuid.NewV4().String(),
		Username: dto.Username,
		Password: string(hash),
	}
	if _, err := ac.DB.Model(user).Insert(); err != nil {
		log.WithError(err).Error("creating user")
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": user.Id})
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	dto := new(models.UserDto)
	if err := c.BodyParser(dto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	user := new(models.User)
	err := ac.DB.Model(user).Where("username = ?", dto.Username).Select()
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Pass)) != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = user.Id

	t, err := token.SignedString(ac.Secret)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{"access_token": t})
}

func (ac *AuthController) Cur(c *fiber.Ctx) error {
	return c.SendString(currentUserId(c))
}

// currentUserId extracts the authenticated user from the JWT middleware.
func currentUserId(c *fiber.Ctx) string {
	user, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := user.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	id, _ := claims["user_id"].(string)
	return id
}
