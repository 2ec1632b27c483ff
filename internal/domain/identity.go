package domain

const RoleAdmin = "admin"

// Identity is the authenticated caller of a user-facing operation
type Identity struct {
	UserID string
	Role   string
}

// CanAccess reports whether the caller owns the loan or holds the admin role
func (i Identity) CanAccess(loan *Loan) bool {
	return loan.IsOwnedBy(i.UserID) || i.Role == RoleAdmin
}
