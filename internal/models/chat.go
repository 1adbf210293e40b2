package models

import "time"

// ChatUsage хранит счётчик сообщений пользователя ассистенту за неделю.
// Ключом служит пара (user_uid, week_start), где week_start — понедельник.
// Сброс счётчика происходит естественным переходом на новую неделю.
type ChatUsage struct {
	ID           int       `json:"id"`
	UserUID      string    `json:"-"`
	WeekStart    time.Time `json:"week_start"`    // Понедельник текущей недели
	MessageCount int       `json:"message_count"` // Количество отправленных сообщений
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ChatMessage — сообщение в формате внешнего completion-сервиса.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatHistoryItem — элемент истории диалога из запроса клиента.
// Type принимает значения "user" и "ai".
type ChatHistoryItem struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// FinancialData — финансовый контекст, который клиент может приложить
// к сообщению, чтобы ассистент дал персонализированный совет.
type FinancialData struct {
	Timeframe     string                  `json:"timeframe"`
	Expenses      FinancialExpenses       `json:"expenses"`
	Budget        FinancialBudget         `json:"budget"`
	Subscriptions []FinancialSubscription `json:"subscriptions"`
}

// FinancialExpenses — сводка расходов в финансовом контексте.
type FinancialExpenses struct {
	Total    float64                `json:"total"`
	Expenses []FinancialExpenseItem `json:"expenses"`
}

// FinancialExpenseItem — отдельный расход в финансовом контексте.
type FinancialExpenseItem struct {
	Title  string  `json:"title"`
	Amount float64 `json:"amount"`
}

// FinancialBudget — бюджет в финансовом контексте.
type FinancialBudget struct {
	Amount float64 `json:"amount"`
}

// FinancialSubscription — подписка в финансовом контексте.
type FinancialSubscription struct {
	Title  string  `json:"title"`
	Amount float64 `json:"amount"`
}

// DummyChatMessage используется для приёма сообщения ассистенту из JSON-запроса.
type DummyChatMessage struct {
	Message             string            `json:"message" validate:"required,max=900"`            // Текст сообщения
	ConversationHistory []ChatHistoryItem `json:"conversation_history" validate:"omitempty,dive"` // История диалога
	FinancialData       *FinancialData    `json:"financial_data" validate:"omitempty"`            // Финансовый контекст
}
