package posts

type Repo interface {
	Upsert(post *Post) error
	Delete(ID string) error
	GetByID(ID string) (*Post, error)
	List() ([]*Post, error)
	ListByAuthor(authorID string) ([]*Post, error)
}
