// internal/app/features/contact/handler.go
package contact

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/portfolio/internal/app/system/contactform"
	"github.com/dalemusser/portfolio/internal/app/system/deployenv"
	"github.com/dalemusser/portfolio/internal/app/system/formrelay"
	"github.com/dalemusser/portfolio/internal/app/system/limits"
	"github.com/dalemusser/portfolio/internal/app/system/navigation"
	"github.com/dalemusser/portfolio/internal/app/system/ratelimit"
	"github.com/dalemusser/portfolio/internal/app/system/sitemetrics"
	"github.com/dalemusser/portfolio/internal/app/system/timeouts"
	"github.com/dalemusser/portfolio/internal/app/system/visitor"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrRateLimited is the relay error for a client over its submission budget.
var ErrRateLimited = errors.New("contact rate limit exceeded")

// Handler owns the contact form endpoints. Pages render the form through the
// contact_form partial; this handler only changes form state.
type Handler struct {
	Forms   *contactform.Registry
	Relay   contactform.Relay
	Limiter *ratelimit.Limiter // nil disables rate limiting
	Metrics *sitemetrics.Metrics
	Deploy  deployenv.Deploy
	Log     *zap.Logger
}

func NewHandler(forms *contactform.Registry, relay contactform.Relay, limiter *ratelimit.Limiter, metrics *sitemetrics.Metrics, deploy deployenv.Deploy, logger *zap.Logger) *Handler {
	return &Handler{
		Forms:   forms,
		Relay:   relay,
		Limiter: limiter,
		Metrics: metrics,
		Deploy:  deploy,
		Log:     logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /contact – submit                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := visitor.ID(r)
	if !ok {
		h.Log.Error("contact submit without visitor session")
		http.Error(w, "missing session", http.StatusBadRequest)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxContactFormSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	form := h.Forms.Get(id)
	form.UpdateEmail(r.PostFormValue("email"))
	form.UpdateMessage(r.PostFormValue("message"))

	// The relay call outlives the request: a visitor navigating away does
	// not abort a message that is already on its way.
	ctx, cancel := timeouts.WithTimeout(context.WithoutCancel(r.Context()), timeouts.Relay(), h.Log, "contact relay")
	defer cancel()

	submissionID := uuid.NewString()
	err := form.Submit(ctx, h.limitedRelay(ratelimit.ClientIP(r)))

	status := http.StatusOK
	switch {
	case err == nil:
		h.Metrics.Contact(sitemetrics.OutcomeSent)
		h.Log.Info("contact message sent", zap.String("submission_id", submissionID))
	case errors.Is(err, contactform.ErrInvalid):
		h.Metrics.Contact(sitemetrics.OutcomeInvalid)
		status = http.StatusUnprocessableEntity
	case errors.Is(err, contactform.ErrInFlight), errors.Is(err, contactform.ErrNotIdle):
		h.Metrics.Contact(sitemetrics.OutcomeBusy)
		status = http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		h.Metrics.Contact(sitemetrics.OutcomeLimited)
		h.Log.Warn("contact submission rate limited",
			zap.String("submission_id", submissionID),
			zap.String("ip", ratelimit.ClientIP(r)))
		status = http.StatusTooManyRequests
		if wait := h.Limiter.RetryAfter(ratelimit.ClientIP(r)); wait > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		}
	default:
		h.Metrics.Contact(sitemetrics.OutcomeFailed)
		h.Log.Warn("contact relay failed",
			zap.String("submission_id", submissionID),
			zap.Error(err))
		status = http.StatusBadGateway
	}

	h.respond(w, r, status, form.Snapshot())
}

// limitedRelay charges the client's budget only when a relay call is
// actually made, so invalid input never counts against it.
func (h *Handler) limitedRelay(key string) contactform.Relay {
	return contactform.RelayFunc(func(ctx context.Context, s formrelay.Submission) error {
		if h.Limiter != nil && !h.Limiter.Allow(key) {
			return ErrRateLimited
		}
		return h.Relay.Send(ctx, s)
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /contact/reset – send another message                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	snap := contactform.Snapshot{Status: contactform.StatusIdle}
	if id, ok := visitor.ID(r); ok {
		if form, ok := h.Forms.Lookup(id); ok {
			form.Reset()
			snap = form.Snapshot()
		}
	}
	h.respond(w, r, http.StatusOK, snap)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /contact/state – JSON snapshot                                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	snap := contactform.Snapshot{Status: contactform.StatusIdle}
	if id, ok := visitor.ID(r); ok {
		if form, ok := h.Forms.Lookup(id); ok {
			snap = form.Snapshot()
		}
	}
	writeJSON(w, http.StatusOK, snap)
}

// respond answers scripted clients with JSON and browsers with a redirect
// back to the page the form was posted from.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, snap contactform.Snapshot) {
	if wantsJSON(r) {
		writeJSON(w, status, snap)
		return
	}
	back := navigation.SafeBackURL(r, navigation.ContactReturn)
	http.Redirect(w, r, h.Deploy.Link(back), http.StatusSeeOther)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
