// Package errors holds the exit statuses of the globcheck CLI and the thin
// layer over github.com/cockroachdb/errors its packages share.
//
// Commands return an [ExitError] to choose the process exit status and
// attach a next step for the user; main prints the message, any hints
// attached with [WithHint], then the suggestion:
//
//	return globerrors.NewUserError(err, "Pass --format json, yaml or toml")
//
// Sentinels such as [ErrNotFound] are matched with [Is] through wrapping,
// [Mark] and ExitError alike.
package errors
