// Package phaxio is a Go client for the Phaxio v1 fax API.
//
// A Client sends faxes and queries their status. When configured with a
// callback URL it also serves the notifications Phaxio POSTs once a fax
// completes, and hands them to listeners registered with OnSent.
//
// Basic usage:
//
//	client, err := phaxio.New(apiKey, apiSecret,
//	    phaxio.WithCallbackURL("https://example.com/phaxio"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	f, _ := os.Open("invoice.pdf")
//	defer f.Close()
//
//	res, err := client.Send(ctx, "1235551212", &phaxio.SendOptions{
//	    Stream:      f,
//	    ContentType: "application/pdf",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("queued fax", res.FaxID)
//
// Receiving callbacks:
//
//	client.OnSent(func(p phaxio.CallbackPayload) {
//	    fmt.Println("fax finished, success:", p.Success())
//	})
//
//	h, err := client.Middleware()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	http.Handle(client.CallbackPath(), h)
//
// Errors returned by Send and FaxStatus can be inspected with errors.Is
// against the sentinel errors, or with errors.As against *APIError,
// *NetworkError and *ResponseError.
package phaxio
