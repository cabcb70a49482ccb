// Package client talks to a distill server and degrades to an offline plan
// generator when the server cannot help.
//
//	c, err := client.New(client.Config{BaseURL: "http://127.0.0.1:8080"})
//	if err != nil {
//	    return err
//	}
//
//	plan, err := c.Distill(ctx, "finish report, gym monday, call mom")
//	switch {
//	case errors.Is(err, client.ErrTextTooLong):
//	case errors.Is(err, client.ErrRateLimited):
//	}
//
// Generate never fails: any server error is logged and MockPlan answers
// instead. ExpandSection proposes follow-up items for a section.
package client
