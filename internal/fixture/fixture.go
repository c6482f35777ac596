// Package fixture provides the static seed data every new session starts from.
package fixture

import (
	"fmt"
	"strings"
	"time"

	"github.com/d60-Lab/hostelbuzz/internal/feed"
)

const avatarBase = "https://picsum.photos/seed"

func avatar(seed string) string { return fmt.Sprintf("%s/%s/40/40", avatarBase, seed) }

// Users 种子用户
func Users() []feed.User {
	return []feed.User{
		{ID: "user-1", Name: "Alex", AvatarURL: avatar("avatar-1")},
		{ID: "user-2", Name: "Mia", AvatarURL: avatar("avatar-2")},
		{ID: "user-3", Name: "Chris", AvatarURL: avatar("avatar-3")},
		{ID: "user-4", Name: "Sarah", AvatarURL: avatar("avatar-4")},
	}
}

// Posts 种子帖子，时间相对 now
func Posts(now time.Time) []feed.Post {
	u := Users()
	return []feed.Post{
		{
			ID:        "post-1",
			Author:    u[0],
			Content:   "Just a heads up, the washing machine on the 2nd floor is out of order. Reported it to the warden.",
			Category:  feed.CategoryLaundry,
			Timestamp: now.Add(-5 * time.Minute),
			Votes:     12,
			Comments:  []feed.Comment{},
		},
		{
			ID:        "post-2",
			Author:    u[1],
			Content:   "Tonight's mess menu: Paneer Butter Masala, Dal Makhani, and Jeera Rice. Gulab Jamun for dessert!",
			Category:  feed.CategoryMess,
			Timestamp: now.Add(-45 * time.Minute),
			Votes:     42,
			Comments:  []feed.Comment{},
		},
		{
			ID:        "post-3",
			Author:    u[2],
			Content:   "The cafe has a special on cold coffee today. Buy one get one free until 5 PM!",
			Category:  feed.CategoryCafe,
			Timestamp: now.Add(-2 * time.Hour),
			Votes:     28,
			Comments:  []feed.Comment{},
		},
		{
			ID:        "post-4",
			Author:    u[3],
			Content:   "Found a lost ID card near the main gate. Belongs to Rohan Sharma, Room 301. Please collect from the security desk.",
			Category:  feed.CategoryGeneral,
			Timestamp: now.Add(-8 * time.Hour),
			Votes:     15,
			Comments:  []feed.Comment{},
		},
	}
}

// CurrentUser builds the signed-in user from a login email.
// The display name is the local part of the address, falling back to "You".
func CurrentUser(sessionID, email string) feed.User {
	name := "You"
	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		name = local
	}
	return feed.User{
		ID:        "user-" + sessionID,
		Name:      name,
		AvatarURL: avatar(sessionID),
	}
}
