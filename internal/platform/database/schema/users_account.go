// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table        string
	ID           string
	Login        string
	Email        string
	PasswordHash string
	PasswordSalt string
	IsConfirmed  string
	IsBanned     string
	BanReason    string
	BanDate      string
	CreatedAt    string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:        "users.account",
	ID:           "id",
	Login:        "login",
	Email:        "email",
	PasswordHash: "passwordhash",
	PasswordSalt: "passwordsalt",
	IsConfirmed:  "isconfirmed",
	IsBanned:     "isbanned",
	BanReason:    "banreason",
	BanDate:      "bandate",
	CreatedAt:    "createdat",
}

func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Login, t.Email, t.PasswordHash, t.PasswordSalt,
		t.IsConfirmed, t.IsBanned, t.BanReason, t.BanDate, t.CreatedAt,
	}
}
