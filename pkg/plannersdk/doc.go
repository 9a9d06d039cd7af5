/*
Package plannersdk is the wire contract and Go client for the trip planner API.

The request and response types here are exactly what the server encodes, so
handlers and clients share one definition. Errors from the server arrive as
*APIError carrying the HTTP status and the user facing message.

	c := plannersdk.NewClient("http://localhost:8080")

	_, err := c.SendOTP(ctx, plannersdk.SendOTPRequest{Email: "a@example.com", Purpose: "register"})

	auth, err := c.Register(ctx, plannersdk.RegisterRequest{...})

	me := c.WithToken(auth.Token)
	plan, err := me.CreatePlan(ctx, plannersdk.PlanRequest{Place: "Goa", CheckIn: "2025-07-01", CheckOut: "2025-07-04"})
	history, err := me.GetHistory(ctx)
*/
package plannersdk
