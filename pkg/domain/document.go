package domain

// Document represents a document in the store. Every record kind is stored as
// a flat Document.
type Document map[string]interface{}

// IDField is the store-generated identity added to every inserted document.
const IDField = "_id"

// Copy returns a shallow copy of the document.
func (d Document) Copy() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Collection represents an ordered collection of documents
type Collection struct {
	Name      string              `json:"name"`
	Documents map[string]Document `json:"documents"`
	Order     []string            `json:"order"`
}

// NewCollection creates a new collection
func NewCollection(name string) *Collection {
	return &Collection{
		Name:      name,
		Documents: make(map[string]Document),
	}
}

// Add appends a document under id, keeping insertion order.
func (c *Collection) Add(id string, doc Document) {
	if _, exists := c.Documents[id]; !exists {
		c.Order = append(c.Order, id)
	}
	c.Documents[id] = doc
}

// Remove drops the document with the given id.
func (c *Collection) Remove(id string) {
	if _, exists := c.Documents[id]; !exists {
		return
	}
	delete(c.Documents, id)
	for i, existing := range c.Order {
		if existing == id {
			c.Order = append(c.Order[:i], c.Order[i+1:]...)
			break
		}
	}
}

// All returns copies of the documents in insertion order.
func (c *Collection) All() []Document {
	docs := make([]Document, 0, len(c.Order))
	for _, id := range c.Order {
		docs = append(docs, c.Documents[id].Copy())
	}
	return docs
}
