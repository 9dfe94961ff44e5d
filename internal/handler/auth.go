package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/wilkadeals/locauto/internal/config"
	"github.com/wilkadeals/locauto/internal/errHandler"
	"github.com/wilkadeals/locauto/internal/helper"
	"github.com/wilkadeals/locauto/internal/models"
	"github.com/wilkadeals/locauto/internal/repository"
	"github.com/wilkadeals/locauto/internal/request"
	"github.com/wilkadeals/locauto/internal/response"
	"github.com/wilkadeals/locauto/internal/smtp"
	"github.com/wilkadeals/locauto/internal/validator"

	"github.com/cradoe/gopass"
	"github.com/pascaldekloe/jwt"
)

const (
	UserActivityLogRegistrationDescription  = "Registered an account"
	UserActivityLogLoginDescription         = "Logged in"
	UserActivityLogFailedLoginDescription   = "Failed login attempt"
	UserActivityLogLockedAccountDescription = "Account locked after repeated failed logins"

	welcomeNotificationTitle   = "Bienvenue sur WilkaDeals !"
	welcomeNotificationMessage = "Nous sommes ravis de vous compter parmi nous. " +
		"Profitez d'une réduction de 5 000 FCFA pour toute location d'une semaine, " +
		"et de 10 000 FCFA pour 3 semaines ou plus !"
)

type AuthHandler struct {
	UserRepo         repository.UserRepository
	ActivityRepo     repository.ActivityRepository
	NotificationRepo repository.NotificationRepository

	Helper     *helper.HelperRepository
	Mailer     smtp.MailerInterface
	Config     *config.Config
	ErrHandler *errHandler.ErrorHandler
}

func NewAuthHandler(handler *AuthHandler) *AuthHandler {
	return &AuthHandler{
		UserRepo:         handler.UserRepo,
		ActivityRepo:     handler.ActivityRepo,
		NotificationRepo: handler.NotificationRepo,
		Helper:           handler.Helper,
		Mailer:           handler.Mailer,
		Config:           handler.Config,
		ErrHandler:       handler.ErrHandler,
	}
}

// New accounts start in the pending verification state and stay there
// until all required documents have been uploaded. Registration itself
// never blocks on the welcome notification or email, those run in the
// background.
func (h *AuthHandler) HandleAuthRegister(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email       string              `json:"email"`
		Password    string              `json:"password"`
		FullName    string              `json:"full_name"`
		PhoneNumber string              `json:"phone_number"`
		Validator   validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	// the Validate function returns a slice of errors if the password
	// does not meet the minimum requirements
	_, errs := gopass.Validate(input.Password)
	if errs != nil {
		h.ErrHandler.FailedValidation(w, r, errs)
		return
	}

	_, found, err := h.UserRepo.GetByEmail(input.Email)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	input.Validator.Check(validator.NotBlank(input.Email), "Email is required")
	input.Validator.Check(validator.IsEmail(input.Email), "Must be a valid email address")
	input.Validator.Check(!found, "Email is already in use")

	input.Validator.Check(validator.NotBlank(input.FullName), "Full name is required")
	input.Validator.Check(validator.MinRunes(input.FullName, 2), "Full name is too short")

	input.Validator.Check(validator.NotBlank(input.PhoneNumber), "Phone number is required")
	input.Validator.Check(validator.Matches(input.PhoneNumber, validator.RgxPhoneNumber), "Phone number must be in international format")

	found, err = h.UserRepo.CheckIfPhoneNumberExist(input.PhoneNumber)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	input.Validator.Check(!found, "Phone number has been registered")

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	hashedPassword, err := gopass.Hash(input.Password)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	createdUser := &models.User{
		FullName:       input.FullName,
		Email:          input.Email,
		PhoneNumber:    input.PhoneNumber,
		Role:           models.RoleClient,
		Status:         models.AccountPending,
		HashedPassword: hashedPassword,
	}

	userID, err := h.UserRepo.Insert(createdUser, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	h.Helper.BackgroundTask(r, func() error {
		_, err := h.ActivityRepo.Insert(&models.ActivityLog{
			UserID:      userID,
			Entity:      repository.ActivityLogUserEntity,
			EntityId:    userID,
			Description: UserActivityLogRegistrationDescription,
		})
		if err != nil {
			log.Printf("Error logging user registration action: %v", err)
			return err
		}

		return nil
	})

	h.Helper.BackgroundTask(r, func() error {
		_, err := h.NotificationRepo.Insert(&models.Notification{
			UserID:  userID,
			Title:   welcomeNotificationTitle,
			Message: welcomeNotificationMessage,
			Type:    models.NotificationTypeWelcome,
		}, nil)
		if err != nil {
			log.Printf("Error creating welcome notification: %v", err)
			return err
		}

		return nil
	})

	h.Helper.BackgroundTask(r, func() error {
		emailData := h.Helper.NewEmailData()
		emailData["Name"] = createdUser.FullName

		err := h.Mailer.Send(createdUser.Email, emailData, "welcome.tmpl")
		if err != nil {
			log.Printf("Error sending welcome email: %v", err)
			return err
		}

		return nil
	})

	message := "Account created successfully"

	err = response.JSONCreatedResponse(w, nil, message)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *AuthHandler) HandleAuthLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email     string              `json:"email"`
		Password  string              `json:"password"`
		Validator validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	user, found, err := h.UserRepo.GetByEmail(input.Email)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	input.Validator.Check(validator.NotBlank(input.Email), "Email is required")
	input.Validator.Check(validator.IsEmail(input.Email), "Must be a valid email address")
	input.Validator.Check(found, "Incorrect email/password")

	if found {
		passwordMatches, err := gopass.ComparePasswordAndHash(input.Password, user.HashedPassword)
		if err != nil {
			h.ErrHandler.ServerError(w, r, err)
			return
		}

		input.Validator.Check(validator.NotBlank(input.Password), "Password is required")
		input.Validator.Check(passwordMatches, "Incorrect email/password")

		if !passwordMatches {
			h.Helper.BackgroundTask(r, func() error {
				_, err := h.ActivityRepo.Insert(&models.ActivityLog{
					UserID:      user.ID,
					Entity:      repository.ActivityLogUserEntity,
					EntityId:    user.ID,
					Description: UserActivityLogFailedLoginDescription,
				})
				if err != nil {
					log.Printf("Error logging failed login action: %v", err)
					return err
				}

				return nil
			})

			// lock the account after 3 consecutive failed attempts
			count := h.ActivityRepo.CountConsecutiveFailedLoginAttempts(user.ID, UserActivityLogFailedLoginDescription)
			if count >= 2 {
				h.Helper.BackgroundTask(r, func() error {
					err := h.UserRepo.Lock(user.ID)
					if err != nil {
						log.Printf("Error locking account after failed logins: %v", err)
						return err
					}

					return nil
				})

				h.Helper.BackgroundTask(r, func() error {
					_, err := h.ActivityRepo.Insert(&models.ActivityLog{
						UserID:      user.ID,
						Entity:      repository.ActivityLogUserEntity,
						EntityId:    user.ID,
						Description: UserActivityLogLockedAccountDescription,
					})
					if err != nil {
						log.Printf("Error logging account lock action: %v", err)
						return err
					}

					return nil
				})

				h.ErrHandler.FailedValidation(w, r, []string{"Account has been locked. Please contact support"})
				return
			}
		}
	}

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	if user.Locked {
		message := "Account has been locked. Please contact support"
		response.JSONErrorResponse(w, nil, message, http.StatusForbidden, nil)
		return
	}

	h.Helper.BackgroundTask(r, func() error {
		_, err := h.ActivityRepo.Insert(&models.ActivityLog{
			UserID:      user.ID,
			Entity:      repository.ActivityLogUserEntity,
			EntityId:    user.ID,
			Description: UserActivityLogLoginDescription,
		})
		if err != nil {
			log.Printf("Error logging successful login action: %v", err)
			return err
		}

		return nil
	})

	var claims jwt.Claims
	claims.Subject = user.ID

	expiry := time.Now().Add(24 * time.Hour)
	claims.Issued = jwt.NewNumericTime(time.Now())
	claims.NotBefore = jwt.NewNumericTime(time.Now())
	claims.Expires = jwt.NewNumericTime(expiry)

	claims.Issuer = h.Config.BaseURL
	claims.Audiences = []string{h.Config.BaseURL}

	jwtBytes, err := claims.HMACSign(jwt.HS256, []byte(h.Config.Jwt.SecretKey))
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := map[string]string{
		"auth_token":   string(jwtBytes),
		"token_expiry": expiry.Format(time.RFC3339),
	}
	message := "Login successful"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
