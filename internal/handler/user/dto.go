package user

import (
	domain "filmorate/internal/domain/user"
	"filmorate/internal/handler/binding"
)

// UserRequest тело запросов POST /users и PUT /users.
// Правила для email, логина и дня рождения проверяет usecase-слой.
type UserRequest struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday string `json:"birthday" binding:"required,datetime=2006-01-02"`
}

// UserResponse представление пользователя в ответах API.
type UserResponse struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Login    string  `json:"login"`
	Name     string  `json:"name"`
	Birthday string  `json:"birthday"`
	Friends  []int64 `json:"friends"`
}

func (r *UserRequest) toDomain() (*domain.User, error) {
	birthday, err := binding.ParseDate("birthday", r.Birthday)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:       r.ID,
		Email:    r.Email,
		Login:    r.Login,
		Name:     r.Name,
		Birthday: birthday,
	}, nil
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: binding.FormatDate(u.Birthday),
		Friends:  u.FriendIDs(),
	}
}

func toUserResponses(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}
