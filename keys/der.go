// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package keys

import (
	encoding_asn1 "encoding/asn1"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

var (
	oidEd25519     = encoding_asn1.ObjectIdentifier{1, 3, 101, 112}
	oidEcPublicKey = encoding_asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	oidSecp256k1   = encoding_asn1.ObjectIdentifier{1, 3, 132, 0, 10}
)

// derKey is the result of parsing a DER encoded key
type derKey struct {
	keyType KeyType
	private bool
	raw     []byte
}

// parseDer parses PKCS#8 private keys, SEC1 EC private keys and SubjectPublicKeyInfo public
// keys for the supported curves
func parseDer(data []byte) (derKey, error) {
	var ret derKey
	input := cryptobyte.String(data)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, asn1.SEQUENCE) || !input.Empty() {
		return ret, newKeyParseError("malformed DER sequence", nil)
	}
	if seq.PeekASN1Tag(asn1.SEQUENCE) {
		return parseSubjectPublicKeyInfo(seq)
	}
	var version int
	if !seq.ReadASN1Integer(&version) {
		return ret, newKeyParseError("malformed DER version", nil)
	}
	// SEC1 ECPrivateKey
	if version == 1 && seq.PeekASN1Tag(asn1.OCTET_STRING) {
		return parseSec1(seq)
	}
	if version > 1 {
		return ret, newKeyParseError("unsupported PKCS#8 version", nil)
	}
	var algSeq cryptobyte.String
	if !seq.ReadASN1(&algSeq, asn1.SEQUENCE) {
		return ret, newKeyParseError("malformed algorithm identifier", nil)
	}
	keyType, err := parseAlgorithmIdentifier(algSeq)
	if err != nil {
		return ret, err
	}
	var keyOctets cryptobyte.String
	if !seq.ReadASN1(&keyOctets, asn1.OCTET_STRING) {
		return ret, newKeyParseError("malformed PKCS#8 private key", nil)
	}
	// The private key is either wrapped in another OCTET STRING or is a SEC1 structure
	if keyOctets.PeekASN1Tag(asn1.SEQUENCE) {
		var sec1 cryptobyte.String
		if !keyOctets.ReadASN1(&sec1, asn1.SEQUENCE) ||
			!sec1.ReadASN1Integer(&version) {
			return ret, newKeyParseError("malformed SEC1 private key", nil)
		}
		return parseSec1(sec1)
	}
	var raw []byte
	if !keyOctets.ReadASN1Bytes(&raw, asn1.OCTET_STRING) {
		return ret, newKeyParseError("malformed PKCS#8 private key", nil)
	}
	return derKey{
		keyType: keyType,
		private: true,
		raw:     raw,
	}, nil
}

func parseSec1(seq cryptobyte.String) (derKey, error) {
	var raw []byte
	if !seq.ReadASN1Bytes(&raw, asn1.OCTET_STRING) {
		return derKey{}, newKeyParseError("malformed SEC1 private key", nil)
	}
	// Optional parameters must name secp256k1 if present
	var params cryptobyte.String
	var hasParams bool
	if !seq.ReadOptionalASN1(
		&params,
		&hasParams,
		asn1.Tag(0).Constructed().ContextSpecific(),
	) {
		return derKey{}, newKeyParseError("malformed SEC1 parameters", nil)
	}
	if hasParams {
		var oid encoding_asn1.ObjectIdentifier
		if !params.ReadASN1ObjectIdentifier(&oid) || !oid.Equal(oidSecp256k1) {
			return derKey{}, newKeyParseError("unsupported SEC1 curve", ErrUnsupportedKeyType)
		}
	}
	return derKey{
		keyType: KeyTypeEcdsaSecp256k1,
		private: true,
		raw:     raw,
	}, nil
}

func parseSubjectPublicKeyInfo(seq cryptobyte.String) (derKey, error) {
	var ret derKey
	var algSeq cryptobyte.String
	if !seq.ReadASN1(&algSeq, asn1.SEQUENCE) {
		return ret, newKeyParseError("malformed algorithm identifier", nil)
	}
	keyType, err := parseAlgorithmIdentifier(algSeq)
	if err != nil {
		return ret, err
	}
	var raw []byte
	if !seq.ReadASN1BitStringAsBytes(&raw) {
		return ret, newKeyParseError("malformed public key bit string", nil)
	}
	return derKey{
		keyType: keyType,
		raw:     raw,
	}, nil
}

// parseAlgorithmIdentifier reads the algorithm OID(s) from the contents of an
// AlgorithmIdentifier sequence
func parseAlgorithmIdentifier(algSeq cryptobyte.String) (KeyType, error) {
	var oid encoding_asn1.ObjectIdentifier
	if !algSeq.ReadASN1ObjectIdentifier(&oid) {
		return 0, newKeyParseError("malformed algorithm OID", nil)
	}
	switch {
	case oid.Equal(oidEd25519):
		return KeyTypeEd25519, nil
	case oid.Equal(oidSecp256k1):
		return KeyTypeEcdsaSecp256k1, nil
	case oid.Equal(oidEcPublicKey):
		var curve encoding_asn1.ObjectIdentifier
		if !algSeq.ReadASN1ObjectIdentifier(&curve) || !curve.Equal(oidSecp256k1) {
			return 0, newKeyParseError("unsupported EC curve", ErrUnsupportedKeyType)
		}
		return KeyTypeEcdsaSecp256k1, nil
	}
	return 0, newKeyParseError("unsupported algorithm "+oid.String(), ErrUnsupportedKeyType)
}

func algorithmOid(keyType KeyType) encoding_asn1.ObjectIdentifier {
	if keyType == KeyTypeEd25519 {
		return oidEd25519
	}
	return oidSecp256k1
}

// encodePrivateKeyDer builds the PKCS#8 form of a raw private key
func encodePrivateKeyDer(keyType KeyType, raw []byte) []byte {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(0)
		b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(algorithmOid(keyType))
		})
		b.AddASN1(asn1.OCTET_STRING, func(b *cryptobyte.Builder) {
			b.AddASN1OctetString(raw)
		})
	})
	return b.BytesOrPanic()
}

// encodePublicKeyDer builds the SubjectPublicKeyInfo form of a raw public key
func encodePublicKeyDer(keyType KeyType, raw []byte) []byte {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(algorithmOid(keyType))
		})
		b.AddASN1BitString(raw)
	})
	return b.BytesOrPanic()
}
