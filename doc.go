// Package criteria provides the codec-neutral model for transporting search
// filters over URLs.
//
// A filter object is turned into a field Tree by a Mapper, flattened into an
// ordered sequence of PathValue pairs, and rendered by a Codec. Decoding
// reverses the chain. Two codecs ship with the module:
//
//   - plain: human readable "key:value,..." strings (package plain)
//   - opaque: base64 of a JSON object (package opaque)
//
// Example usage:
//
//	transport := criteria.NewTransport(plain.NewCodec(), mapper.New())
//
//	encoded, err := transport.Marshal(&filters.UserFilter{Gender: null.StringFrom("female")})
//	// encoded == "gender:female"
//
//	var f filters.UserFilter
//	err = transport.Unmarshal("gender:female,ageStart:12", &f)
//
// Every field a codec reads is described by a Schema, declared once per filter
// type. Unknown fields are dropped on decode; decoding into a type without a
// schema fails with ErrUnsupportedEncoding.
package criteria
