// Package services holds the console's application logic: login and
// logout, the OTP password reset, the user directory, the quote builder,
// the video gallery and the profile page.
//
// Services talk to the backend through api.Client, persist authentication
// state through SessionStore and report every outcome to a Notifier. They
// return errors as well so callers can branch, but callers need not print
// them: the user has already been told.
//
// Directory, QuoteBuilder, Gallery and ProfileService are not safe for
// concurrent use; the console drives each from one goroutine. ResetFlow
// may be driven concurrently with its own countdown.
package services
