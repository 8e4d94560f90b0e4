// Package endpoints maps every backend route used by the admin console to a
// function. Functions build the path, pass the body or query through and
// return the response unchanged; errors are never caught here.
package endpoints

import (
	"fmt"
	"net/url"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/apiclient"
)

// Endpoints binds the route functions to one API client
type Endpoints struct {
	client *apiclient.Client
}

func New(client *apiclient.Client) *Endpoints {
	return &Endpoints{client: client}
}

func (e *Endpoints) Client() *apiclient.Client {
	return e.client
}

// path formats a route, escaping every path parameter
func path(format string, ids ...string) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, args...)
}
