package state

import (
	"examdesk/internal/api"
	"examdesk/internal/logging"
	"examdesk/internal/types"
)

// HandleFailure is the single interception point for every failed remote
// call. It is registered once at process start as the API client's failure
// hook and runs after the failure resolves, before any repaint reacts to the
// resulting state.
//
// A 401 cascades first: session, cached profile, and attempt draft are all
// cleared before the notification surfaces, so no observer can see an
// unauthorized failure with stale credentials still in place. Every failure,
// 401 or not, updates the ambient error slot and pushes exactly one
// notification.
func (s *Store) HandleFailure(failure *api.Failure) {
	if failure == nil {
		return
	}
	detail := failure.Message()
	kind := types.NotificationKindError
	if failure.Unauthorized() {
		kind = types.NotificationKindWarning
		s.ClearSession()
		s.ClearProfile()
		s.ClearAttempt()
		s.logger.Warn("session invalidated by unauthorized response")
	}
	s.notifier.SetGlobalError(detail)
	s.notifier.Push(kind, detail)
	s.logger.Debug("remote call failed",
		logging.F("kind", string(failure.Kind)),
		logging.F("status", failure.StatusCode),
		logging.F("detail", detail))
}
