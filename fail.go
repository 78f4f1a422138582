package cmdinput

// Fail returns a Buffer that never launches.
// Both Start and Read return err.
func Fail(err error) Buffer { return fail{err} }

type fail struct{ error }

func (f fail) Read([]byte) (int, error) { return 0, f.error }
func (f fail) Start() error             { return f.error }
