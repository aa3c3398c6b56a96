package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/edivorce/edivorce-api/internal/domain"
	"github.com/edivorce/edivorce-api/internal/repository"
	"github.com/edivorce/edivorce-api/internal/session"
)

// IdentityOptions names the trusted headers set by the SiteMinder proxy.
type IdentityOptions struct {
	AuthHeader        string
	DisplayNameHeader string
}

// Identity loads the browser's session and resolves the signed-in user.
//
// A user bound to the session wins. Otherwise a non-empty auth header signs
// the user in: the user is found or created by guid and bound to the
// session, which is saved (setting the cookie) before the handler runs.
// A session pointing at a deleted user is treated as anonymous.
func Identity(
	sessions *session.Manager,
	users repository.UserRepository,
	opts IdentityOptions,
	logger *zap.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.With(zap.String("correlation_id", GetCorrelationID(ctx)))

			sess, err := sessions.Load(r)
			if err != nil {
				log.Error("load session failed", zap.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			var user *domain.User
			if sess.UserID != nil {
				u, err := users.GetByID(ctx, *sess.UserID)
				switch {
				case err == nil:
					user = u
				case errors.Is(err, domain.ErrNotFound):
					log.Debug("session user no longer exists", zap.Int64("user_id", *sess.UserID))
				default:
					log.Error("load session user failed", zap.Error(err))
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
			}

			if user == nil && opts.AuthHeader != "" {
				if guid := strings.TrimSpace(r.Header.Get(opts.AuthHeader)); guid != "" {
					u, created, err := users.GetOrCreateByGUID(ctx, guid, displayName(r, opts))
					if err != nil {
						log.Error("sign-in failed", zap.Error(err))
						http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
						return
					}
					sess.Login(u.ID)
					if err := sessions.Save(ctx, w, sess); err != nil {
						log.Error("save session failed", zap.Error(err))
						http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
						return
					}
					log.Info("user signed in", zap.Int64("user_id", u.ID), zap.Bool("created", created))
					user = u
				}
			}

			ctx = session.NewContext(ctx, sess)
			ctx = WithUser(ctx, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func displayName(r *http.Request, opts IdentityOptions) string {
	if opts.DisplayNameHeader == "" {
		return ""
	}
	return strings.TrimSpace(r.Header.Get(opts.DisplayNameHeader))
}

// WithUser returns a copy of ctx carrying u; nil means anonymous.
func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// CurrentUser returns the signed-in user, or nil for anonymous requests.
func CurrentUser(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userKey).(*domain.User)
	return u
}
