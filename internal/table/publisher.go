package table

// Publisher delivers text to seats. A message sent to a seat reaches every
// session sitting in it.
type Publisher interface {
	Publish(seats []string, exclude []string, data []byte) error
}

// Subscriber lets a session receive what is published to its seat.
type Subscriber interface {
	Subscribe(seat string, handler func(data []byte)) (func(), error)
}
