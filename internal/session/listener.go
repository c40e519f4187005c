package session

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// callbackPage is shown in the browser after the provider redirects back.
const callbackPage = `<!DOCTYPE html>
<html>
<head><title>LeadPilot</title></head>
<body style="font-family: sans-serif; text-align: center; margin-top: 4em;">
<h2>Sign-in received</h2>
<p>You can close this window and return to the terminal.</p>
</body>
</html>`

// CallbackListener is a loopback HTTP listener that captures a single OAuth
// redirect. The provider is pointed at RedirectURL; Wait blocks until the
// redirect arrives and hands back the full request URL for the session
// controller to consume.
type CallbackListener struct {
	listener net.Listener
	server   *http.Server
	result   chan string
}

// NewCallbackListener binds an ephemeral port on the loopback interface.
func NewCallbackListener() (*CallbackListener, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("bind loopback listener: %w", err)
	}

	l := &CallbackListener{
		listener: listener,
		result:   make(chan string, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", l.handle)
	l.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		_ = l.server.Serve(listener)
	}()

	return l, nil
}

// RedirectURL is the URL the provider should redirect back to.
func (l *CallbackListener) RedirectURL() string {
	return fmt.Sprintf("http://%s/callback", l.listener.Addr().String())
}

func (l *CallbackListener) handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprint(w, callbackPage)

	select {
	case l.result <- "http://" + r.Host + r.URL.String():
	default:
		// Only the first redirect counts.
	}
}

// Wait blocks until the redirect arrives or ctx is done, then returns the
// full callback URL.
func (l *CallbackListener) Wait(ctx context.Context) (string, error) {
	select {
	case rawURL := <-l.result:
		return rawURL, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close shuts the listener down.
func (l *CallbackListener) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return l.server.Shutdown(ctx)
}
