package gateway

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	twclient "github.com/twilio/twilio-go/client"
)

// Handler serves the inbound message webhook. Requests are form-encoded
// with From and Body; the reply is the TwiML document from Gateway.Handle.
type Handler struct {
	gateway    *Gateway
	validator  *twclient.RequestValidator
	webhookURL string
}

// NewHandler enables signature validation only when both the auth token and
// the public webhook URL are configured; local and test setups run open.
func NewHandler(gw *Gateway, authToken, webhookURL string) *Handler {
	h := &Handler{gateway: gw, webhookURL: webhookURL}
	if authToken != "" && webhookURL != "" {
		v := twclient.NewRequestValidator(authToken)
		h.validator = &v
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form body", http.StatusBadRequest)
		return
	}
	if h.validator != nil && !h.validSignature(r) {
		slog.Warn("webhook signature rejected", "remote", r.RemoteAddr)
		http.Error(w, "invalid signature", http.StatusForbidden)
		return
	}

	from := r.PostFormValue("From")
	body := r.PostFormValue("Body")
	if from == "" {
		http.Error(w, "missing From", http.StatusBadRequest)
		return
	}

	id := uuid.NewString()
	slog.Info("inbound message", "id", id, "from", from)

	resp, err := h.gateway.Handle(from, body)
	if err != nil {
		slog.Error("message handling failed", "id", id, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out, err := resp.Render()
	if err != nil {
		slog.Error("render reply failed", "id", id, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	w.Write(out)
	slog.Info("replied", "id", id, "messages", len(resp.Messages()))
}

func (h *Handler) validSignature(r *http.Request) bool {
	params := make(map[string]string, len(r.PostForm))
	for k, v := range r.PostForm {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return h.validator.Validate(h.webhookURL, params, r.Header.Get("X-Twilio-Signature"))
}
