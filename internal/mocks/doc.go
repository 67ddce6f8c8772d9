// Package mocks provides shared test doubles for the store, auth and job
// interfaces.
//
// Most mocks are fn-field structs with an in-memory default behavior, so a
// test overrides only the method it cares about:
//
//	tokens := &mocks.MockTokenService{
//	    IssueFn: func(ctx context.Context, subject string) (string, error) {
//	        return "", errors.New("signing failed")
//	    },
//	}
//
// The Testify* variants embed testify's mock.Mock for tests that assert on
// exact calls.
package mocks
