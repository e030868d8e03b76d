// Package test provides infrastructure and utilities for integration testing in Taskboard.
//
// The test package runs the real application behind an httptest server on a
// throwaway sqlite database, and drives it through the public API client,
// one client per logged-in user.
//
// The package provides:
//
//   - Suite: the database, repositories, server and client of one test
//
//   - Accounts: an administrator and the guest account are seeded on start;
//     CreateUser and LoginAs add and log in further users
//
// Example Usage:
//
//	func TestExample(t *testing.T) {
//	    suite := test.NewSuite(t)
//	    defer suite.Cleanup()
//
//	    admin := suite.LoginAs(test.AdminEmail, test.AdminPassword)
//	    _, err := admin.CreateProject(suite.Context(), handlers.ProjectParams{Title: "Launch"})
//	    require.NoError(t, err)
//	}
package test
