// Package grpc, numaralandırma servisinin gRPC sunucusunu kurar.
//
// Sunucu şu an yalnızca standart health servisini ve reflection'ı sunar.
// sentiric-contracts içinde numaralandırma için bir protobuf sözleşmesi
// bulunmadığından Parse/Format/Normalize çağrıları gRPC üzerinden açılmaz;
// bu işlemler HTTP API'sindedir (internal/server/rest). Sözleşme eklendiğinde
// servis, UnaryTraceInterceptor ile birlikte bu sunucuya kaydedilmelidir.
package grpc
