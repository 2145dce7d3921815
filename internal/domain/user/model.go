package user

// Identity - данные пользователя, видимые остальному приложению.
// Balance - стартовый баланс кредитов; текущий баланс хранит сессия.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Balance  int    `json:"balance"`
	Avatar   string `json:"avatar,omitempty"`
}

// Seed - исходная учетная запись с паролем в открытом виде
type Seed struct {
	Identity
	Password string
}

// Account - учетная запись в хранилище
type Account struct {
	Identity
	PasswordHash string
}

// DemoAccounts - фиксированный набор демонстрационных учетных записей
var DemoAccounts = []Seed{
	{
		Identity: Identity{ID: "1", Username: "admin", Name: "Admin User", Email: "admin@example.com", Balance: 100},
		Password: "admin123",
	},
	{
		Identity: Identity{ID: "2", Username: "demo", Name: "Demo User", Email: "demo@example.com", Balance: 50},
		Password: "demo123",
	},
	{
		Identity: Identity{ID: "3", Username: "user", Name: "Test User", Email: "test@example.com", Balance: 25},
		Password: "user123",
	},
}
