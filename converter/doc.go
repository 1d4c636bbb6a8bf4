// Package converter upgrades Swagger 2.0 documents to OpenAPI 3.x through a
// remote conversion service.
//
// The default endpoint is the public converter at converter.swagger.io. The
// service fetches the document itself, so conversion needs the document's URL
// rather than its bytes.
//
// # Usage
//
//	client := converter.New(converter.WithTimeout(5 * time.Second))
//	doc, converted, err := client.Ensure(ctx, doc, specURL)
//	if errors.Is(err, oaserrors.ErrConversion) {
//	    // fall back to the original document
//	}
//
// Every call is bounded by the client timeout (10 seconds by default) and is
// never retried.
package converter
