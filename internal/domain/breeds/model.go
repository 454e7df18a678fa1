package breeds

// Breed es solo un nombre único. Puppies y parents lo referencian de
// manera informal (texto, sin foreign key).
type Breed struct {
	Name string
}
