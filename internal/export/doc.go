// Package export writes generated keyframes stylesheets to their
// destination.
//
// A target is either a local file path or an s3://bucket/key URL.
// Open picks the store for a target:
//
//	store, err := export.Open("s3://assets/vela/keyframes.css", "eu-west-1")
//	if err != nil {
//	    return err
//	}
//	err = store.Put(ctx, []byte(engine.CSS()))
//
// S3 credentials come from the standard AWS_* environment variables.
package export
