package models

// Student represents a learner registered with the school.
type Student struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	KanaName    string `db:"kana_name" json:"kana_name"`
	Nickname    string `db:"nickname" json:"nickname"`
	MailAddress string `db:"mail_address" json:"mail_address"`
	Address     string `db:"address" json:"address"`
	Age         int    `db:"age" json:"age"`
	Gender      string `db:"gender" json:"gender"`
	Remark      string `db:"remark" json:"remark"`
	IsDeleted   bool   `db:"is_deleted" json:"is_deleted"`
}
