package diag

import "os"

// colorTarget is where Sink writes; a var (not a literal os.Stderr at each
// call site) so tests can redirect it without restructuring Sink's API.
var colorTarget = os.Stderr
