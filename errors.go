package sbclient

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, sponsorblock.ErrInvalidInput) {
//		fmt.Println("caller bug: bad arguments")
//	}
//
// Using errors.As() for typed errors:
//
//	var svcErr *sponsorblock.ServiceError
//	if errors.As(err, &svcErr) {
//		fmt.Printf("API returned status %d\n", svcErr.StatusCode)
//	}
//
// From the sponsorblock package:
//   - sponsorblock.ErrInvalidInput: caller-supplied arguments are invalid;
//     never retryable
//   - sponsorblock.ServiceError: the API answered with a non-2xx, non-404
//     status
//   - sponsorblock.DecodeError: the response didn't match the expected
//     schema; not retryable
//   - sponsorblock.TransportError: network-level failure; wraps the
//     underlying transport error
//
// A 404 from the API is not an error: it is the routine "no segments
// recorded" outcome and comes back as a successful empty result.
//
// From the storage package:
//   - storage.ErrNotFound: no cached entry for the video
//   - storage.ErrStorageCorrupt: the cache file is damaged
//   - storage.StorageError: operation context wrapper
//
// From the youtube package:
//   - youtube.ErrChannelNotFound: the channel does not exist
//   - youtube.ErrInvalidChannel: the channel reference cannot be parsed
