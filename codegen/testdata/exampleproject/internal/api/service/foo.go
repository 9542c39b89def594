package service

import (
	"exampleproject/internal/api/model"

	"github.com/dkinzler/baselib/model/response"
	"github.com/dkinzler/baselib/rx"
)

// FooService is the api of the foo backend.
//
// @Autogen{"host": "https://foo.example.com"}
type FooService interface {
	// Fetch returns a single user.
	Fetch(id int) rx.Observable[response.BaseResponse[model.User]]

	// Search returns all users matching the query.
	// @Scheduler{"directive": "SWITCH_IO"}
	Search(query string, tags ...string) rx.Observable[[]model.User]

	// Legacy returns a user by name.
	//
	// Deprecated: use Fetch.
	// @Scheduler{"directive": "ONLY_HANDLE_RESULT"}
	Legacy(name string) rx.Observable[response.BaseResponse[model.User]]

	// Status reports the state of the backend.
	// @Scheduler{"directive": "HANDLE_RESULT_TO_MAIN"}
	Status() rx.Observable[string]

	// Ping checks that the backend is reachable.
	Ping() string
}
