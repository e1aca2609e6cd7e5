package models

import "time"

// Note — заметка, принадлежащая ровно одному пользователю.
type Note struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	ImgURL    *string   `json:"imgUrl"`
	Price     float64   `json:"price"`
	IsPinned  bool      `json:"isPinned"`
	UserID    string    `json:"userId"`
	CreatedOn time.Time `json:"createdOn"`
}

// NoteInput — тело запроса на создание заметки.
//
// Title и Content обязательны, остальные поля получают значения по умолчанию.
type NoteInput struct {
	Title   string   `json:"title" label:"Title" validate:"required"`
	Content string   `json:"content" label:"Content" validate:"required"`
	Tags    []string `json:"tags"`
	ImgURL  *string  `json:"imgUrl"`
	Price   float64  `json:"price"`
}

// NotePatch — тело запроса на частичное обновление заметки.
// Каждое поле помнит, было ли оно передано в запросе.
type NotePatch struct {
	Title    Optional[string]   `json:"title"`
	Content  Optional[string]   `json:"content"`
	Tags     Optional[[]string] `json:"tags"`
	IsPinned Optional[bool]     `json:"isPinned"`
	ImgURL   Optional[string]   `json:"imgUrl"`
	Price    Optional[float64]  `json:"price"`
}

// HasChanges сообщает, проходит ли патч проверку "No changes provided".
//
// Title и Content засчитываются только непустыми строками, Tags — только
// не-null массивом (пустой массив засчитывается). ImgURL и Price
// засчитываются при любом присутствии, включая null, "" и 0.
// IsPinned в проверке не участвует: запрос только с isPinned отклоняется.
func (p NotePatch) HasChanges() bool {
	return p.Title.NonEmpty() ||
		p.Content.NonEmpty() ||
		p.Tags.NonNull() ||
		p.ImgURL.Set ||
		p.Price.Set
}

// Apply переносит переданные поля патча на заметку.
func (p NotePatch) Apply(n *Note) {
	if p.Title.NonEmpty() {
		n.Title = *p.Title.Value
	}
	if p.Content.NonEmpty() {
		n.Content = *p.Content.Value
	}
	if p.Tags.NonNull() {
		n.Tags = *p.Tags.Value
	}
	if p.IsPinned.Set {
		n.IsPinned = p.IsPinned.Get()
	}
	if p.ImgURL.Set {
		n.ImgURL = p.ImgURL.Value
	}
	if p.Price.Set {
		n.Price = p.Price.Get()
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
}
