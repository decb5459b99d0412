// Package authapi implements session.Backend against the authentication
// backend's HTTP API.
//
// Every response uses a common JSON envelope:
//
//	{"success": true,  "data": {...}}
//	{"success": false, "error": "human readable reason"}
//
// Rejections the backend produces (success false) are returned as *Error
// with the backend's message verbatim, which is what the session manager
// shows to users. Transport and decoding failures are ordinary wrapped
// errors.
//
// # Endpoints
//
//   - POST /auth/login – exchanges a verified identity token and the
//     requested role for an access token, a refresh token, and the user
//     profile
//   - GET /auth/me – returns the profile for the bearer access token
//
// # Usage
//
//	var cfg authapi.Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//	client, err := authapi.New(cfg, authapi.WithLogger(log))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	manager := session.New(store, provider, client)
package authapi
