package upstream

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/nexus-dashboard/internal/config"
	"golang.org/x/oauth2"
)

// Scopes requested at login: the user's identity and guild list.
var Scopes = []string{"identify", "guilds"}

// OAuthExchanger builds the authorize redirect and performs the server-side
// authorization_code exchange, so the client secret never reaches the browser.
type OAuthExchanger struct {
	oauth2Config *oauth2.Config
	httpClient   *http.Client
}

// NewOAuthExchanger derives the authorize and token endpoints from the API base URL.
func NewOAuthExchanger(cfg config.UpstreamConfig, httpClient *http.Client) *OAuthExchanger {
	base := strings.TrimRight(cfg.GetAPIBaseURL(), "/")
	return &OAuthExchanger{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GetClientID(),
			ClientSecret: cfg.GetClientSecret(),
			RedirectURL:  cfg.GetRedirectURI(),
			Scopes:       Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   base + "/oauth2/authorize",
				TokenURL:  base + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: httpClient,
	}
}

// AuthCodeURL is the upstream authorize URL the browser is redirected to.
func (e *OAuthExchanger) AuthCodeURL() string {
	return e.oauth2Config.AuthCodeURL("")
}

// Exchange trades a one-time code for access and refresh tokens.
func (e *OAuthExchanger) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if e.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)
	}
	return e.oauth2Config.Exchange(ctx, code)
}
