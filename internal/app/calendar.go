package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendarConfig holds the OAuth2 configuration for the optional
// external-calendar integration. When a host supplies a token, events on
// their primary calendar count as busy time during slot resolution.
type GoogleCalendarConfig struct {
	Config *oauth2.Config
}

func InitGoogleCalendarConfig() *GoogleCalendarConfig {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	redirectURL := os.Getenv("GOOGLE_REDIRECT_URL")

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil
	}

	return &GoogleCalendarConfig{Config: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes: []string{
			calendar.CalendarReadonlyScope,
		},
		Endpoint: google.Endpoint,
	}}
}

// GET /api/calendar/auth
func (a *App) GoogleAuthHandler(c *gin.Context) {
	cfg := InitGoogleCalendarConfig()
	if cfg == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google Calendar not configured"})
		return
	}

	state := fmt.Sprintf("host_%s_%d", c.Query("host_id"), time.Now().Unix())
	url := cfg.Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.JSON(http.StatusOK, gin.H{
		"auth_url": url,
		"state":    state,
	})
}

// GET /oauth2callback
func (a *App) GoogleOAuth2CallbackHandler(c *gin.Context) {
	cfg := InitGoogleCalendarConfig()
	if cfg == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google Calendar not configured"})
		return
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "authorization code required"})
		return
	}

	token, err := cfg.Config.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to exchange code for token"})
		return
	}

	tokenJSON, _ := json.Marshal(token)
	c.JSON(http.StatusOK, gin.H{
		"message": "Authorization successful",
		"state":   state,
		"token":   string(tokenJSON),
	})
}

// fetchCalendarBusy lists the host's primary-calendar events in [from, to)
// and returns them as busy intervals for the overlap filter. Cancelled and
// all-day events are skipped; all-day entries carry no wall-clock interval
// to conflict with.
func (a *App) fetchCalendarBusy(ctx context.Context, tokenStr string, from, to time.Time) ([]Slot, error) {
	var token oauth2.Token
	if err := json.Unmarshal([]byte(tokenStr), &token); err != nil {
		return nil, &ValidationError{Field: "google_token", Reason: "invalid token format"}
	}

	cfg := InitGoogleCalendarConfig()
	if cfg == nil {
		return nil, &ValidationError{Field: "google_token", Reason: "Google Calendar not configured"}
	}

	client := cfg.Config.Client(ctx, &token)
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fetchErr("calendar", err)
	}

	events, err := srv.Events.List("primary").
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		MaxResults(250).
		Do()
	if err != nil {
		return nil, fetchErr("calendar", err)
	}

	var busy []Slot
	for _, item := range events.Items {
		if item.Status == "cancelled" {
			continue
		}
		if item.Start == nil || item.End == nil ||
			item.Start.DateTime == "" || item.End.DateTime == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			continue
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			continue
		}
		busy = append(busy, Slot{Start: start, End: end})
	}
	return busy, nil
}
