package contextkeys

// Собственный тип ключа, чтобы не пересекаться с другими пакетами
type contextKey string

// DBContextKey хранит соединение *gorm.DB (пул либо транзакцию теста) в context запроса
const DBContextKey = contextKey("db")
