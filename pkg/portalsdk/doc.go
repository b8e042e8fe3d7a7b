/*
Package portalsdk provides a Go client for the family portal API.

# SDKClient vs Session

SDKClient covers the public endpoints: health probes, registration and
login. Registration and login return a Session that carries the session
token and is used for everything that needs a logged-in user:

	client := portalsdk.NewSDKClient("http://localhost:3000")

	session, err := client.Login(ctx, "me@example.com", "secret")
	if err != nil {
		return err
	}

	reply, err := session.Chat(ctx, portalsdk.ChatRequest{
		Messages: []portalsdk.ChatMessage{{Role: "user", Content: "hello"}},
	})

Admin-only calls (users, invites) live on Session too; the server answers
them with 403 for members.

# Errors

Non-2xx responses are returned as *APIError, which carries the HTTP status,
the machine readable code and, for quota rejections, the exhausted ceiling:

	var apiErr *portalsdk.APIError
	if errors.As(err, &apiErr) && apiErr.IsQuotaExceeded() {
		fmt.Println("out of", apiErr.Quota, "for today")
	}
*/
package portalsdk
