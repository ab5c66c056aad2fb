package dispute

import (
	"errors"
	"time"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/pkg/errs"
	"supplyflow/internal/pkg/guard"
)

// ErrMessageIsNotConstructed is returned when a Message was not created via
// NewMessage.
var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage constructor")

// Message is an immutable entry in a dispute thread.
type Message struct { //nolint:recvcheck //using for validation
	id         kernel.UUID
	authorID   kernel.UUID
	authorName string
	body       string
	sentAt     time.Time

	guard guard.ConstructorGuard
}

// NewMessage creates a validated dispute message.
func NewMessage(
	id kernel.UUID,
	authorID kernel.UUID,
	authorName string,
	body string,
	sentAt time.Time,
) (Message, error) {
	m := Message{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setIDs(id, authorID),
		m.setAuthorName(authorName),
		m.setBody(body),
		m.setSentAt(sentAt),
	); err != nil {
		return Message{}, err
	}

	return m, nil
}

// Validate ensures the message was created through the constructor.
func (m Message) Validate() error {
	return m.guard.Validate(ErrMessageIsNotConstructed)
}

// ID returns the message identifier.
func (m Message) ID() kernel.UUID {
	return m.id
}

// AuthorID returns the author's identifier.
func (m Message) AuthorID() kernel.UUID {
	return m.authorID
}

// AuthorName returns the author's display name.
func (m Message) AuthorName() string {
	return m.authorName
}

// Body returns the message text.
func (m Message) Body() string {
	return m.body
}

// SentAt returns the moment the message entered the thread.
func (m Message) SentAt() time.Time {
	return m.sentAt
}

// IsEqual compares two messages by identity.
func (m Message) IsEqual(other Message) bool {
	return m.id.IsEqual(other.id)
}

func (m *Message) setIDs(id, authorID kernel.UUID) error {
	if err := errors.Join(id.Validate(), authorID.Validate()); err != nil {
		return err
	}

	m.id = id
	m.authorID = authorID
	return nil
}

func (m *Message) setAuthorName(authorName string) error {
	if authorName == "" {
		return errs.NewValueIsRequiredError("authorName")
	}
	m.authorName = authorName
	return nil
}

func (m *Message) setBody(body string) error {
	if body == "" {
		return errs.NewValueIsRequiredError("body")
	}
	m.body = body
	return nil
}

func (m *Message) setSentAt(sentAt time.Time) error {
	if sentAt.IsZero() {
		return errs.NewValueIsRequiredError("sentAt")
	}
	m.sentAt = sentAt
	return nil
}
