package model

import "errors"

var (
	ErrNonPositiveAmount   = errors.New("amount must be greater than 0")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrOverLimit           = errors.New("charge would exceed credit limit")
	ErrNotCredit           = errors.New("operation requires a credit card")
	ErrOverpayment         = errors.New("payment exceeds card balance")
)
