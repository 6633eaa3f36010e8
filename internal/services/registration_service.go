package services

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/emplatform/employee-management-api/internal/mailer"
	"github.com/emplatform/employee-management-api/internal/models"
	"github.com/emplatform/employee-management-api/internal/repository"
	"github.com/emplatform/employee-management-api/internal/utils"
)

var (
	ErrInvalidEmail         = errors.New("Invalid email address")
	ErrAccountExists        = errors.New("Account with this email already exist")
	ErrInvalidInviteToken   = errors.New("Account or token is invalid")
	ErrCompanyNameRequired  = errors.New("Company name is required")
	ErrCompanyExists        = errors.New("Company already exists")
	ErrIncorrectPassword    = errors.New("Password is incorrect")
	ErrFieldNotAllowed      = errors.New("Only first_name, last_name and account can be updated")
	ErrFieldMustBeString    = errors.New("first_name, last_name and account must be strings")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// RegistrationService orchestrates the invite/confirm/activate
// onboarding workflow.
type RegistrationService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	inviteRepo  repository.InviteRepository
	mail        mailer.Sender
	baseURL     string
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	inviteRepo repository.InviteRepository,
	mail mailer.Sender,
	baseURL string,
) *RegistrationService {
	return &RegistrationService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		inviteRepo:  inviteRepo,
		mail:        mail,
		baseURL:     baseURL,
	}
}

// CheckAccount verifies the email is free, stores an invite and mails
// the confirmation token. Returns the generated token.
func (s *RegistrationService) CheckAccount(account string) (string, error) {
	if !utils.IsValidEmail(account) {
		return "", ErrInvalidEmail
	}

	if _, err := s.inviteRepo.FindByAccount(account); err == nil {
		return "", ErrAccountExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to check invites: %w", err)
	}

	if _, err := s.userRepo.FindByAccount(account); err == nil {
		return "", ErrAccountExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to check users: %w", err)
	}

	token, err := utils.GenerateInviteToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate invite token: %w", err)
	}

	invite := &models.AccountInvite{
		Account:     account,
		InviteToken: token,
	}
	if err := s.inviteRepo.Create(invite); err != nil {
		return "", fmt.Errorf("failed to save invite: %w", err)
	}

	s.sendInviteEmail(account, token)
	return token, nil
}

// ConfirmToken reports whether a stored invite matches both fields
// exactly. Read-only: the invite is neither consumed nor expired.
func (s *RegistrationService) ConfirmToken(account, token string) (bool, error) {
	if _, err := s.inviteRepo.FindByAccountAndToken(account, token); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check invite: %w", err)
	}
	return true, nil
}

// CreateAdminInput holds the fields for completing company sign-up.
type CreateAdminInput struct {
	CompanyName string
	FirstName   string
	LastName    string
	Account     string
	Password    string
}

// CreateCompanyAndAdmin creates the company and its first administrator.
// The admin comes out active and staff.
func (s *RegistrationService) CreateCompanyAndAdmin(input CreateAdminInput) (*models.User, error) {
	if input.CompanyName == "" {
		return nil, ErrCompanyNameRequired
	}

	if _, err := s.companyRepo.FindByName(input.CompanyName); err == nil {
		return nil, ErrCompanyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check company: %w", err)
	}

	if _, err := s.userRepo.FindByAccount(input.Account); err == nil {
		return nil, ErrAccountExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check users: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	company := &models.Company{CompanyName: input.CompanyName}
	admin := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Account:      input.Account,
		PasswordHash: string(hash),
		IsStaff:      true,
		IsActive:     true,
	}

	if err := s.companyRepo.CreateWithAdmin(company, admin); err != nil {
		return nil, fmt.Errorf("failed to complete sign-up: %w", err)
	}

	admin.Company = *company
	return admin, nil
}

// CreateUserInput holds the fields for an admin creating a subordinate.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Account   string
	Password  string
	IsStaff   bool
}

// CreateSubordinate creates an inactive user in the acting admin's
// company and mails a password-setup link.
func (s *RegistrationService) CreateSubordinate(input CreateUserInput, actingUser *models.User) (*models.User, error) {
	if !utils.IsValidEmail(input.Account) {
		return nil, ErrInvalidEmail
	}

	if _, err := s.userRepo.FindByAccount(input.Account); err == nil {
		return nil, ErrAccountExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check users: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Account:      input.Account,
		PasswordHash: string(hash),
		CompanyID:    actingUser.CompanyID,
		IsStaff:      input.IsStaff,
		IsActive:     false,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.sendConfirmationLinkEmail(user.Account)
	return user, nil
}

// ActivateUser flips is_active once the user has proven their password.
func (s *RegistrationService) ActivateUser(account, password string) (*models.User, error) {
	user, err := s.userRepo.FindByAccount(account)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrIncorrectPassword
	}

	user.IsActive = true
	if err := s.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to activate user: %w", err)
	}
	return user, nil
}

// UpdateUser partial-updates the acting user. Only first_name,
// last_name and account may change; any other key rejects the whole
// request and leaves the record untouched.
func (s *RegistrationService) UpdateUser(fields map[string]interface{}, user *models.User) (*models.User, error) {
	allowed := map[string]bool{"first_name": true, "last_name": true, "account": true}
	for key, value := range fields {
		if !allowed[key] {
			return nil, ErrFieldNotAllowed
		}
		if _, ok := value.(string); !ok {
			return nil, ErrFieldMustBeString
		}
	}

	if v, ok := fields["first_name"].(string); ok {
		user.FirstName = v
	}
	if v, ok := fields["last_name"].(string); ok {
		user.LastName = v
	}
	if v, ok := fields["account"].(string); ok {
		if !utils.IsValidEmail(v) {
			return nil, ErrInvalidEmail
		}
		if v != user.Account {
			if _, err := s.userRepo.FindByAccount(v); err == nil {
				return nil, ErrAccountExists
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check users: %w", err)
			}
		}
		user.Account = v
	}

	if err := s.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Outbound mail is best effort: a failure is logged by the mailer and
// never fails the enclosing request.

func (s *RegistrationService) sendInviteEmail(account, token string) {
	subject := "Registration confirmation"
	body := fmt.Sprintf("To complete your registration enter the confirmation code: %s", token)
	if err := s.mail.Send(account, subject, body); err != nil {
		log.Warn().Str("account", account).Msg("invite email not delivered")
	}
}

func (s *RegistrationService) sendConfirmationLinkEmail(account string) {
	subject := "Registration confirmation"
	body := fmt.Sprintf(
		"To complete your registration follow the link and enter your password: %s/auth/api/v1/confirm-registration/?account=%s",
		s.baseURL, account)
	if err := s.mail.Send(account, subject, body); err != nil {
		log.Warn().Str("account", account).Msg("invite email not delivered")
	}
}
