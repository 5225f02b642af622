package services

import (
	"errors"
	"testing"

	"restaurant_pos_backend/internal/models"
)

func newAuthServiceForTest() (AuthService, *fakeUserRepo, *fakeActivityRepo) {
	userRepo := newFakeUserRepo()
	activityRepo := newFakeActivityRepo()
	svc := NewAuthService(userRepo, NewActivityService(activityRepo))
	return svc, userRepo, activityRepo
}

func TestCreateUserNormalizesRole(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()

	user, err := svc.CreateUser(CreateUserRequest{Name: "Ayşe", Username: "ayse", Password: "secret1", Role: "garson"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Role != models.RoleWaiter {
		t.Errorf("stored role = %q, want %q", user.Role, models.RoleWaiter)
	}
	if user.PasswordHash == "secret1" || user.PasswordHash == "" {
		t.Error("password stored without hashing")
	}

	if _, err := svc.CreateUser(CreateUserRequest{Name: "X", Username: "x", Password: "secret1", Role: "pilot"}); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown role: got %v, want ErrValidation", err)
	}
	if _, err := svc.CreateUser(CreateUserRequest{Name: "Dup", Username: "ayse", Password: "secret1", Role: "garson"}); !errors.Is(err, ErrUsernameExists) {
		t.Errorf("duplicate username: got %v, want ErrUsernameExists", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _, activityRepo := newAuthServiceForTest()
	if _, err := svc.CreateUser(CreateUserRequest{Name: "Kemal", Username: "kemal", Password: "parola1", Role: "kasiyer"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	resp, err := svc.Login(models.Credentials{Username: "kemal", Password: "parola1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Error("login returned empty token")
	}
	if resp.User.Role != models.RoleCashier {
		t.Errorf("login role = %q, want %q", resp.User.Role, models.RoleCashier)
	}
	if got := activityRepo.types(); len(got) != 1 || got[0] != models.ActivityUserLogin {
		t.Errorf("audit entries = %v, want [user_login]", got)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, userRepo, _ := newAuthServiceForTest()
	if _, err := svc.CreateUser(CreateUserRequest{Name: "Kemal", Username: "kemal", Password: "parola1", Role: "kasiyer"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if _, err := svc.Login(models.Credentials{Username: "kemal", Password: "yanlis"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(models.Credentials{Username: "yok", Password: "parola1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: got %v, want ErrInvalidCredentials", err)
	}

	for _, u := range userRepo.users {
		u.IsActive = false
	}
	if _, err := svc.Login(models.Credentials{Username: "kemal", Password: "parola1"}); !errors.Is(err, ErrUserInactive) {
		t.Errorf("inactive user: got %v, want ErrUserInactive", err)
	}
}

func TestLogoutWritesAudit(t *testing.T) {
	svc, _, activityRepo := newAuthServiceForTest()
	actor := models.Actor{UserID: 3, UserName: "Kemal", Role: models.RoleCashier}

	if err := svc.Logout(actor); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if got := activityRepo.types(); len(got) != 1 || got[0] != models.ActivityUserLogout {
		t.Errorf("audit entries = %v, want [user_logout]", got)
	}
}
