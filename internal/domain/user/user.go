package user

import (
	"sort"
	"time"
)

// User представляет доменную модель пользователя.
//
// Дружба симметрична: если B есть в Friends у A, то и A есть в Friends у B.
// За это отвечает хранилище, модель лишь хранит множество.
type User struct {
	ID       int64
	Email    string
	Login    string
	Name     string    // Отображаемое имя, по умолчанию совпадает с Login
	Birthday time.Time // Дата рождения (без времени, UTC)
	Friends  map[int64]struct{}
}

// HasFriend сообщает, есть ли friendID среди друзей пользователя.
func (u *User) HasFriend(friendID int64) bool {
	_, ok := u.Friends[friendID]
	return ok
}

// FriendIDs возвращает идентификаторы друзей по возрастанию.
func (u *User) FriendIDs() []int64 {
	ids := make([]int64, 0, len(u.Friends))
	for id := range u.Friends {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone возвращает глубокую копию пользователя.
func (u *User) Clone() *User {
	c := *u
	c.Friends = make(map[int64]struct{}, len(u.Friends))
	for id := range u.Friends {
		c.Friends[id] = struct{}{}
	}
	return &c
}
