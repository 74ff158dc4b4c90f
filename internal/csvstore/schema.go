package csvstore

// tableSchema describes one CSV table: its file name and declared header.
// The header is written as the first line of every table file and checked
// on every load.
type tableSchema struct {
	file   string
	header []string
}

var (
	usersSchema = tableSchema{
		file: "users.csv",
		header: []string{
			"user_id", "username", "email", "password_hash", "full_name",
			"created_at", "last_login", "is_active",
		},
	}

	expensesSchema = tableSchema{
		file: "expenses.csv",
		header: []string{
			"expense_id", "user_id", "date", "amount", "category",
			"description", "payment_method", "notes", "created_at",
		},
	}

	backlogSchema = tableSchema{
		file: "backlog.csv",
		header: []string{
			"task_id", "user_id", "title", "description", "category",
			"priority", "status", "due_date", "estimated_amount", "notes",
			"created_at", "updated_at",
		},
	}
)

// tableSchemas lists every table the store manages, for initialization.
var tableSchemas = []tableSchema{usersSchema, expensesSchema, backlogSchema}
