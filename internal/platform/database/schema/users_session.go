// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package schema

// UserSessionTable represents the 'users.session' table
type UserSessionTable struct {
	Table        string
	UserID       string
	DeviceID     string
	IPAddress    string
	DeviceTitle  string
	IssuedAt     string
	ExpiresAt    string
	LastActiveAt string
}

// UserSession is the schema definition for users.session
var UserSession = UserSessionTable{
	Table:        "users.session",
	UserID:       "userid",
	DeviceID:     "deviceid",
	IPAddress:    "ipaddress",
	DeviceTitle:  "devicetitle",
	IssuedAt:     "issuedat",
	ExpiresAt:    "expiresat",
	LastActiveAt: "lastactiveat",
}

func (t UserSessionTable) Columns() []string {
	return []string{t.UserID, t.DeviceID, t.IPAddress, t.DeviceTitle, t.IssuedAt, t.ExpiresAt, t.LastActiveAt}
}
