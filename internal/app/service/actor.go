package service

import "storefront-catalog-service/internal/domain"

// requireActor rejects anonymous calls.
func requireActor(actor *domain.User, op string) error {
	if actor == nil {
		return domain.Unauthorized("authentication required").WithOp(op)
	}
	return nil
}

// requireAdmin rejects anonymous and non-admin callers.
func requireAdmin(actor *domain.User, op string) error {
	if err := requireActor(actor, op); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return domain.Forbidden("admin access required").WithOp(op)
	}
	return nil
}
