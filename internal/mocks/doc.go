// Package mocks holds hand-written test doubles for the service, store,
// auth and event interfaces.
//
// Each mock exposes one Fn field per method. A nil Fn falls back to a
// canned value (for example MockPostService.Post or MockJWTService.Token), so
// tests only override the calls they care about:
//
//	svc := &mocks.MockPostService{
//	    PostExistsFn: func(ctx context.Context, id int64) (bool, error) {
//	        return false, nil
//	    },
//	}
//
// MockRepository wires a MockPostStore, MockCommentStore and MockAuthorStore
// together and runs RunInTx callbacks against itself, counting calls in
// TxCount.
package mocks
