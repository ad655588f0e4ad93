package auth

import (
	"errors"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"quizroom-system/internal/models"
)

type fakeUserStore struct {
	users  map[string]*models.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User), nextID: 1}
}

func (f *fakeUserStore) GetUserByUsername(username string) (*models.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, errors.New("record not found")
	}
	return user, nil
}

func (f *fakeUserStore) GetUserByID(userID uint) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeUserStore) CreateUser(user *models.User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.Username] = user
	return nil
}

func TestRegister_HashesPasswordAndDefaultsDisplayName(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store, "secret")

	user := &models.User{Username: "quinn", Email: "q@example.com", Password: "hunter2"}
	require.NoError(t, svc.Register(user))

	stored := store.users["quinn"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "hunter2", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("hunter2")))
	assert.Equal(t, "quinn", stored.DisplayName)
}

func TestLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store, "secret")

	require.NoError(t, svc.Register(&models.User{
		Username: "quinn", Email: "q@example.com", Password: "hunter2",
	}))

	token, err := svc.Login("quinn", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	claims := *parsed.Claims.(*jwt.MapClaims)
	assert.Equal(t, "quinn", claims["username"])
	assert.Equal(t, float64(1), claims["user_id"])

	_, err = svc.Login("quinn", "wrong")
	assert.Error(t, err)

	_, err = svc.Login("nobody", "hunter2")
	assert.Error(t, err)
}
