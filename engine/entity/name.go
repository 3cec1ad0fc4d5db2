package entity

// Name tags an entity with a human-readable identifier scripts can look up.
type Name struct {
	Value string
}

func NewName() *Name {
	return &Name{}
}

func (n *Name) TypeName() string {
	return "Name"
}

func (n *Name) Serialize() []Field {
	return []Field{
		{Name: "name", Value: n.Value},
	}
}

func (n *Name) Unserialize(variables map[string]string) {
	if v, ok := variables["name"]; ok {
		n.Value = v
	}
}
