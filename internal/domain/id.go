package domain

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrInvalidID — строка не является корректным идентификатором записи.
var ErrInvalidID = errors.New("invalid id")

// ID — идентификатор записи каталога.
//
// Формат совпадает с ObjectID документного хранилища: 24 hex-символа
// в нижнем регистре. Реляционный backend хранит ту же строку как TEXT,
// поэтому идентификаторы переносимы между backend-ами.
type ID string

// NewID генерирует новый идентификатор.
func NewID() ID {
	return ID(bson.NewObjectID().Hex())
}

// ParseID проверяет и нормализует идентификатор.
func ParseID(s string) (ID, error) {
	oid, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return "", ErrInvalidID
	}
	return ID(oid.Hex()), nil
}

// ParseIDs проверяет список идентификаторов.
// Возвращает ошибку на первом некорректном значении.
func ParseIDs(values []string) ([]ID, error) {
	ids := make([]ID, 0, len(values))
	for _, v := range values {
		id, err := ParseID(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// String возвращает строковое представление ID.
func (id ID) String() string {
	return string(id)
}

// ObjectID возвращает ID в формате bson.ObjectID.
// Для некорректного ID возвращает нулевой ObjectID.
func (id ID) ObjectID() bson.ObjectID {
	oid, err := bson.ObjectIDFromHex(string(id))
	if err != nil {
		return bson.NilObjectID
	}
	return oid
}

// IDFromObjectID конвертирует bson.ObjectID в ID.
func IDFromObjectID(oid bson.ObjectID) ID {
	return ID(oid.Hex())
}
