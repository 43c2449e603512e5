package models

// Module is a unit of course content authored outside this service.
// The engine only reads modules; it never creates or mutates them.
type Module struct {
	ID       string  `gorm:"primaryKey;size:64" json:"id"`
	Name     string  `gorm:"size:255;not null" json:"name"`
	Overview string  `gorm:"type:text" json:"overview"`
	Topics   []Topic `gorm:"constraint:OnDelete:CASCADE" json:"topics"`
}

// Topic belongs to exactly one Module.
type Topic struct {
	ID       string `gorm:"primaryKey;size:64" json:"id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	ModuleID string `gorm:"size:64;not null;index" json:"module_id"`
}

// FindTopic returns the topic with the given id, if the module owns it.
func (m Module) FindTopic(topicID string) (Topic, bool) {
	for _, topic := range m.Topics {
		if topic.ID == topicID {
			return topic, true
		}
	}
	return Topic{}, false
}
