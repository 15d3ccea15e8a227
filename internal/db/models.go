package db

type Task struct {
	ID        string `gorm:"column:id;primaryKey"`
	Title     string `gorm:"column:title;not null;default:''"`
	Completed bool   `gorm:"column:completed;not null;default:false"`
	CreatedAt int64  `gorm:"column:created_at;not null;default:0;autoCreateTime:false"`
	UpdatedAt int64  `gorm:"column:updated_at;not null;default:0;autoUpdateTime:false"`
}

func (Task) TableName() string { return "tasks" }
