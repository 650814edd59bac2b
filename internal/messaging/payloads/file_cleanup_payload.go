package payloads

// FileCleanupPayload — задача на удаление осиротевшего файла из
// файлового хранилища. Публикуется координатором, когда запись,
// ссылающаяся на файл, не закоммитилась (или место удалено, а
// синхронное удаление файла не удалось).
type FileCleanupPayload struct {
	ObjectKey string `json:"object_key"`
	Reason    string `json:"reason"`
}
