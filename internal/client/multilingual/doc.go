// Package multilingual converts translatable content between the backend's
// nested per-locale shape and flat per-locale strings used by edit forms.
//
// # Wire format
//
// Every translatable attribute travels as
//
//	{"en":[{"name":"Title","value":"..."}],"ta":[...],"si":[...]}
//
// Keys are always emitted in en, ta, si order and missing locales are encoded
// as empty arrays.
//
// # Operations
//
//   - Normalize / NormalizeAll: nested -> flat, total, "" for anything absent
//   - Denormalize: flat -> nested, labels re-synthesized from fixed constants
//   - NormalizeList / DenormalizeList: list-valued counterparts
//   - ValidateParity: list fields must hold the same count in every locale
//   - Display: read with English fallback
package multilingual
