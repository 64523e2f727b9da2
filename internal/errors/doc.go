// Package errors provides the structured error type shared by every rpg-progression package.
//
// Errors carry a Code, a message, an optional cause and free-form metadata:
//
//	err := errors.InvalidArgumentf("xp grant must not be negative: %d", amount)
//	err := errors.NotFound("item not found").WithMeta("item_id", id)
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load item")
//	}
//
// # Conventions
//
// The progression engine only ever returns InvalidArgument, and only from its
// boundary functions (constructors, restore, xp validation). Advancement itself
// cannot fail.
//
// Repositories return NotFound and AlreadyExists and wrap storage failures.
// Orchestrators validate their inputs with a ValidationBuilder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	if err := vb.Build(); err != nil {
//	    return nil, err
//	}
//
// The CLI converts codes into exit statuses with Code.ExitCode.
package errors
