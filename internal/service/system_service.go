package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/edivorce/edivorce-api/internal/domain"
	"github.com/edivorce/edivorce-api/internal/repository"
)

// Action names the branch taken by CurrentState.
type Action string

const (
	ActionReset     Action = "reset"
	ActionIntercept Action = "intercept"
	ActionTerms     Action = "terms"
	ActionView      Action = "view"
)

// DebugFlags are the presence-only query flags understood by CurrentState.
type DebugFlags struct {
	Reset     bool
	Intercept bool
	Terms     bool
}

// CurrentStateRequest carries everything CurrentState needs explicitly:
// the environment read for this request, the flags, the signed-in user
// (nil when anonymous) and a way to flush the caller's session.
type CurrentStateRequest struct {
	Environment  domain.Environment
	Flags        DebugFlags
	User         *domain.User
	FlushSession func(ctx context.Context) error
}

// CurrentState is the outcome of the debug tool. Redirect means the caller
// should send the browser back to the tool without query parameters;
// otherwise the dashboard is rendered with HideNav and IsAnonymous.
type CurrentState struct {
	Action      Action
	Redirect    bool
	HideNav     bool
	IsAnonymous bool
	// Responses is how many questions the signed-in user has answered.
	Responses int
}

// SystemService backs the health check and the development-only debug tool.
type SystemService struct {
	questions repository.QuestionRepository
	users     repository.UserRepository
	logger    *zap.Logger
}

func NewSystemService(
	questions repository.QuestionRepository,
	users repository.UserRepository,
	logger *zap.Logger,
) *SystemService {
	return &SystemService{questions: questions, users: users, logger: logger}
}

// QuestionCount returns the number of stored questions. Store errors are
// returned as-is; there is no retry.
func (s *SystemService) QuestionCount(ctx context.Context) (int, error) {
	return s.questions.Count(ctx)
}

// CurrentState applies the debug tool's flags in priority order
// reset > intercept > terms. Every mutation is committed before it returns.
func (s *SystemService) CurrentState(ctx context.Context, req CurrentStateRequest) (*CurrentState, error) {
	if !req.Environment.DebugEnabled() {
		return nil, domain.ErrDebugDisabled
	}

	authenticated := req.User != nil

	switch {
	case req.Flags.Reset:
		if authenticated {
			if err := s.deleteUser(ctx, req.User); err != nil {
				return nil, err
			}
		}
		if req.FlushSession != nil {
			if err := req.FlushSession(ctx); err != nil {
				return nil, fmt.Errorf("flush session: %w", err)
			}
		}
		return redirect(ActionReset), nil

	case req.Flags.Intercept && authenticated:
		u := req.User
		u.HasSeenOrdersPage = false
		if err := s.users.Save(ctx, u); err != nil {
			return nil, fmt.Errorf("save user: %w", err)
		}
		n, err := s.users.DeleteResponsesByQuestion(ctx, u.ID, domain.QuestionWantWhichOrders)
		if err != nil {
			return nil, err
		}
		s.logger.Info("orders intercept reset",
			zap.Int64("user_id", u.ID), zap.Int64("responses_deleted", n))
		return redirect(ActionIntercept), nil

	case req.Flags.Terms && authenticated:
		u := req.User
		accepted := u.ToggleTerms()
		if err := s.users.Save(ctx, u); err != nil {
			return nil, fmt.Errorf("save user: %w", err)
		}
		s.logger.Info("terms toggled",
			zap.Int64("user_id", u.ID), zap.Bool("has_accepted_terms", accepted))
		return redirect(ActionTerms), nil
	}

	st := &CurrentState{
		Action:      ActionView,
		HideNav:     true,
		IsAnonymous: !authenticated,
	}
	if authenticated {
		resps, err := s.users.ListResponses(ctx, req.User.ID)
		if err != nil {
			return nil, err
		}
		st.Responses = len(resps)
	}
	return st, nil
}

// deleteUser removes the user's responses and then the user itself.
func (s *SystemService) deleteUser(ctx context.Context, u *domain.User) error {
	n, err := s.users.DeleteResponses(ctx, u.ID)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, u.ID); err != nil {
		return err
	}
	s.logger.Info("user reset",
		zap.Int64("user_id", u.ID), zap.Int64("responses_deleted", n))
	return nil
}

func redirect(a Action) *CurrentState {
	return &CurrentState{Action: a, Redirect: true}
}
