// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package auth

import "context"

// # Code Store Contract

// CodeStore keeps one-shot emailed codes under a TTL. A code maps to the
// user it was issued for; consuming it removes it atomically so a code can
// never be redeemed twice.
type CodeStore interface {
	/*
		SetRecoveryCode stores a password-recovery code for a user,
		replacing any code issued earlier.
	*/
	SetRecoveryCode(context context.Context, code, userID string) error

	/*
		ConsumeRecoveryCode redeems a recovery code.

		Returns:
		  - string: The user the code was issued for
		  - error: dberr.ErrNotFound if the code is unknown or expired
	*/
	ConsumeRecoveryCode(context context.Context, code string) (string, error)

	/*
		SetConfirmationCode stores a registration-confirmation code.
	*/
	SetConfirmationCode(context context.Context, code, userID string) error

	/*
		ConsumeConfirmationCode redeems a confirmation code.

		Returns:
		  - string: The user the code was issued for
		  - error: dberr.ErrNotFound if the code is unknown or expired
	*/
	ConsumeConfirmationCode(context context.Context, code string) (string, error)
}
