package mapper

import (
	authdto "github.com/AlibekovAA/microblog/internal/auth/service/dto"
	userdomain "github.com/AlibekovAA/microblog/internal/user/domain"
)

// UserToDTO drops the password hash.
func UserToDTO(user userdomain.User) authdto.User {
	return authdto.User{
		ID:        string(user.ID),
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}
