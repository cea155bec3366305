// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package roles defines the closed set of user roles and the role checks
the API exposes.

# Roles

A user holds exactly one of three roles:

	roles.Admin          // platform administrator
	roles.ContestCreator // may submit contests
	roles.User           // may enter contests

Parse validates an incoming role string:

	role, err := roles.Parse("contest_creator")

Unknown strings return ErrUnknownRole.

# Checks

Check answers "does the user with this email hold this role":

	ok, err := roles.Check(ctx, store, email, roles.Admin)

An email with no registered user is not an error; the check is simply
false. Check accepts any UserFinder, so handlers pass the store and
tests pass an in-memory stand-in.
*/
package roles
